package repositories

type repositoryError string

// ErrNotFound is returned when a lookup matches no record.
const ErrNotFound = repositoryError("record not found")

func (e repositoryError) Error() string {
	return string(e)
}
