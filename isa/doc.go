// Package isa describes the instruction set of the quadasm target CPU.
//
// The CPU has sixteen two-operand, one-operand and zero-operand
// instructions, eight registers (r0-r7), and four addressing modes:
// immediate (#5), direct (LABEL), indexed (LABEL[r1][r2]) and register (r3).
//
// Every memory word is an 8-bit value field plus a 2-bit tag telling a
// loader whether the value is Absolute, Relocatable or External. The
// package also holds the operand classifier shared by both assembler
// passes, so that both derive identical word counts.
package isa
