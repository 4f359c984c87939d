// Package viz renders survey layers in the terminal.
//
// Fields are drawn as coloured cell maps using lipgloss, with every layer of a
// sheet sharing the sheet's colour range so heights can be compared directly.
// Centre-line profiles are drawn with asciigraph, and [Browser] is a bubbletea
// model for paging through a whole report.
package viz
