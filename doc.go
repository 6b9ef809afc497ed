// Package deskcalc implements a desk calculator over complex numbers.
//
// Input is a sequence of statements separated by newlines or semicolons. A
// statement is an expression, an assignment like "x = 2i", a list assignment
// like "xs = [1, 2, 3]", a function definition like "fn f(a, b) = a^2 + b",
// or a deletion like "del x f". Juxtaposition multiplies, so "2pi" and
// "3(x+1)" are products, and "-2^2" is "-(2^2)".
//
// A Parser executes statements against a SymbolTable, which holds variables,
// constants, lists, and functions. User-defined functions see the table as it
// is when they are called, with their parameters temporarily bound over
// whatever those names meant before.
package deskcalc
