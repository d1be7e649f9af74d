// Package test has helpers for tests that need real network listeners.
package test

import (
	"net"
	"sync"
)

var (
	used = map[int]struct{}{}
	lock sync.Mutex
)

// RandomPort reserves a free TCP port and returns it. A port is never handed
// out twice within the same process, so parallel tests cannot collide.
func RandomPort() int {
	for {
		l, err := net.Listen("tcp", ":0")
		if err != nil {
			continue
		}
		port := l.Addr().(*net.TCPAddr).Port
		_ = l.Close()

		lock.Lock()
		if _, ok := used[port]; ok {
			lock.Unlock()
			continue
		}
		used[port] = struct{}{}
		lock.Unlock()

		return port
	}
}
