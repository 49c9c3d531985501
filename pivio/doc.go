// Package pivio reads and writes PIV vector-field files.
//
// Readers:
//
//   - Insight .vec (Tecplot POINT zone): a header line with VARIABLES and
//     ZONE I=<nx>, J=<ny>, then nx·ny comma-separated rows x, y, u, v, chc
//     with x varying fastest.
//   - OpenPIV .txt: whitespace-separated columns x y u v [flags] [mask],
//     '#' comments. Flagged or masked vectors become NaN.
//
// LoadDirectory reads every matching file of a directory concurrently and
// stacks them along time in lexical file order.
//
// Writers: WriteVec, WriteOpenPIV, WriteVTK (legacy binary rectilinear
// grid) and WriteMeta, a YAML sidecar with the dataset attributes.
// Save writes a whole dataset, one file per frame and format.
package pivio
