// Package finder drives smart search on one page: it owns the toolbar, asks
// a term expander for related words, highlights the results and navigates
// between them.
//
// A Finder serializes every operation on its document. The only step run
// without the lock is the term expansion request, so a page can be closed or
// unloaded while a search is pending; the late answer is then discarded.
//
//	f, err := finder.New(doc, provider.Expander(), finder.WithViewport(vp))
//	f.Toggle(ctx)
//	res, err := f.Search(ctx, "cat")
//	f.Next()
package finder
