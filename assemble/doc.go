// Package assemble orchestrates one or more decks into a final page
// sequence: it filters progressive slides, groups slides into pages, keeps
// the running page counter, records bookmarks at deck boundaries, and
// streams composed pages to a [PageSink] in strict page order.
//
// Two assembly modes are supported. In the default boundary mode each deck
// starts on a fresh page, even when the previous page is not full. In packed
// mode all decks form one continuous slide stream (optionally separated by a
// blank spacer slide) and pages fill without regard for deck boundaries;
// bookmarks still point at the page where each deck's first surviving slide
// lands.
//
//	asm := assemble.New(assemble.DefaultOptions())
//	doc, warnings, err := asm.Assemble(decks, sink)
//
// Page composition is a pure function of its inputs, so the assembler can
// optionally fan it out across goroutines (Options.Workers); results are
// always flushed to the sink in page order, keeping the observable output
// identical to sequential assembly.
package assemble
