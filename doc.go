// Package scrollcore implements content-aware comic page segmentation and
// viewport-scrolling.
//
// Given a page image and its estimated background color, the package finds
// an ordered list of panel rectangles (Frame values), tiles any panel too
// large for a given viewport, and walks the resulting frame list one row at
// a time with a ScrollCursor. Archive extraction, image decoding, display,
// and input handling are external collaborators; see the imagesrc and acv
// packages for the concrete implementations this module ships.
package scrollcore
