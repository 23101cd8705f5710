// Package io provides the external collaborators of the LS-8 CPU:
// the program image loader, and the console used by PRN.
//
// A program image is a text file with one binary literal per memory cell.
// Blank lines and lines starting with '#' are skipped, and anything after
// a '#' on a line is a comment.
package io
