package interview

import "sync"

// userLocks serializes state-machine operations per username. Reads and
// writes of a user's transcript and counter are read-modify-write, so two
// concurrent requests for the same user would otherwise lose updates.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for username, creating it on first use, and
// returns the unlock function.
func (ul *userLocks) Lock(username string) func() {
	ul.mu.Lock()
	lock, ok := ul.locks[username]
	if !ok {
		lock = &sync.Mutex{}
		ul.locks[username] = lock
	}
	ul.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
