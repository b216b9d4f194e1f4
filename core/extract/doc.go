// Package extract produces the incoming set for a reconciliation pass.
//
// An Extractor returns the source-language text items of an application.
// FanOut turns those items into one placeholder record per target locale,
// which is what the reconciliation engine consumes.
//
// The bundled ProjectExtractor reads Apple Localizable.strings files from a
// project tree:
//
//	MyApp/
//	  en.lproj/Localizable.strings   <- source locale
//	  fr.lproj/Localizable.strings
//	  pt-BR.lproj/Localizable.strings
//
// InfoPlist.strings files are never read.
package extract
