// Package notebook implements the Jupyter notebook (.ipynb) file format,
// based on nbformat v4.
//
// The model is lossless: every metadata object keeps fields it does not
// recognize in an opaque bag and re-emits them unchanged, so a notebook
// written by a newer or extended producer survives a decode/encode cycle
// without dropping anything.
//
// Cell and output variants are discriminated by the "cell_type" and
// "output_type" tags. Unknown tags are a decode error rather than being
// coerced to a default variant, since silently reinterpreting a cell would
// corrupt the document on the next save.
//
// Cell sources and stream text accept both of the wire forms Jupyter uses,
// a plain string or an array of line fragments. Normalize converts either
// form into the array representation notebooks conventionally store.
package notebook
