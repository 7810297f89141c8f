package sats

import "sync"

// forEachChannel runs fn for every selected channel. With parallel set,
// channels run concurrently; fn writes its result into the slot i it is
// given, so no further synchronisation is needed.
func forEachChannel(parallel bool, channels []int, fn func(i, ch int)) {
	if !parallel || len(channels) <= 1 {
		for i, ch := range channels {
			fn(i, ch)
		}
		return
	}

	var wg sync.WaitGroup
	for i, ch := range channels {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn(i, ch)
		}()
	}
	wg.Wait()
}
