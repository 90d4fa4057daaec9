// Package primes tests and enumerates prime numbers by trial division.
//
// Nothing is cached between calls; each enumeration restarts from 2.
package primes

// IsPrime reports whether n is prime.
func IsPrime(n int) bool {
	switch {
	case n < 2:
		return false
	case n == 2:
		return true
	case n%2 == 0:
		return false
	}
	// i <= n/i is i*i <= n without overflow.
	for i := 3; i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// First returns the first count primes in increasing order. The result is
// empty if count is not positive.
func First(count int) []int {
	if count <= 0 {
		return []int{}
	}
	r := make([]int, 0, min(count, 1024))
	for n := 2; len(r) < count; n++ {
		if IsPrime(n) {
			r = append(r, n)
		}
	}
	return r
}

// Nth returns the nth prime, counting from 1. The second result is false if
// n is not positive.
func Nth(n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	p := First(n)
	return p[len(p)-1], true
}
