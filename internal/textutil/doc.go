// Package textutil holds small text helpers shared by the command-line
// output code.
package textutil
