// Package reader reads the text layer of PDF files into [model.Document]s.
//
// Parsing is delegated to github.com/ledongthuc/pdf; files are first
// checked with pdfcpu so that encrypted or corrupt input fails early with
// [ErrUnreadable] instead of producing partial text.
//
// # Opening PDF Files
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	doc, pageErrs, err := r.Document(ctx)
//
// # Coordinates
//
// PDF user space has its origin at the bottom left and places glyphs on
// their baseline. The reader converts every glyph to top-origin coordinates
// relative to the page's media box, so a span's Y is the distance from the
// top of the page to the top of the text. Pages are numbered from 1.
//
// # Error Handling
//
// Failures to open or parse a file wrap [ErrUnreadable]; files without
// pages return [ErrNoPages]. A page whose content stream cannot be decoded
// does not fail the document: it is kept empty and reported as a
// [PageError]. Panics raised by the parser are recovered and converted to
// errors.
package reader
