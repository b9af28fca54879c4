// Package asm implements the two-pass assembler core for the quadasm CPU.
//
// Parse splits a macro-free source into statements. Resolve (pass 1)
// assigns addresses to every label, computes the word length of every
// statement and rebases data symbols after the code region. Encode (pass 2)
// replays the same counters and emits tagged memory words, recording every
// use of an external symbol.
//
// Both passes are tolerant: statement errors are collected as Diagnostics
// and the scan continues, so a single run reports every problem in a file.
package asm
