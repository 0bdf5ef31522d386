package battle

// Rand is the source of randomness for wild move selection, wild species
// selection and damage variance. *math/rand.Rand satisfies it.
type Rand interface {
	// Intn returns a uniform value in [0, n). n is always > 0.
	Intn(n int) int
}
