// Package console is a terminal front end for the pad grid.
//
// Pads are drawn as coloured blocks in index order, Columns per row. Each
// pad has a key (shown on its block); pressing it, or selecting the pad with
// the arrow keys and hitting enter, presses the pad with the "console"
// source tag. Space toggles the global pause and q quits.
//
// The model never touches engine state. Presses and pause toggles are posted
// to the tick loop, and appearance changes arrive through a Feed registered
// as a surface renderer.
package console
