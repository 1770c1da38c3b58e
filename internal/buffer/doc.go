// Package buffer holds the document being edited as an ordered sequence of
// lines, together with the file it was loaded from and its unsaved-changes
// state.
package buffer
