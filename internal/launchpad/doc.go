// Package launchpad drives a Novation Launchpad (X / Mini MK3) in programmer
// mode as both an input source and an appearance renderer.
//
// Pad index layout: the 8x8 grid is numbered row by row from the top-left,
// index = row*8 + col, matching the console and the show file. Programmer
// mode numbers notes from the bottom-left (11..88), so note 81 is index 0
// and note 18 is index 63. Side and top buttons are ignored.
//
// Input runs on the gomidi listener goroutine and is posted to the tick
// loop. Output arrives on the tick loop through RenderPad, is queued without
// blocking, and is sent by Run. LED colours are the nearest entry of the
// device's fixed velocity palette, compared in CIE Lab.
package launchpad
