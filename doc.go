// Package pyzipgrep searches for text inside compressed archives, including
// archives nested inside archives, without extracting them to disk.
//
// The entry point is [New] followed by [Engine.Search], which produces a lazy,
// cancellable sequence of [Match]:
//
//	eng, err := pyzipgrep.New([]string{"logs/*.zip"},
//		pyzipgrep.WithContentFilter(filter.Contains("ERROR", false)),
//		pyzipgrep.WithRecursive(true))
//	if err != nil {
//		return err
//	}
//
//	seq, err := eng.Search(ctx)
//	if err != nil {
//		return err
//	}
//	for m, err := range seq {
//		if err != nil {
//			return err
//		}
//		fmt.Println(m)
//	}
//
// Breaking out of the loop cancels all outstanding work.
package pyzipgrep
