// Package artifact writes the loadable outputs of an assembled program.
//
// A clean assembly of base name NAME produces:
//
//	NAME.ob   object: word counts, then one address/payload line per word
//	NAME.ent  entry symbols and their addresses, if any were declared
//	NAME.ext  every use site of an external symbol, if there is one
//
// Object fields use the compact base-4 notation of Compact. Entries and
// externals use four digit decimal addresses.
package artifact
