package principal

type Principal struct {
	ID string
}
