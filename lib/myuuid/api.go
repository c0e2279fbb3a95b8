package myuuid

import "github.com/google/uuid"

//go:generate mockgen -source=api.go -package myuuid -destination uuider_mock.go UUIDer
type UUIDer interface {
	Create() string
}

type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.New().String()
}

// IsValid is used to reject session cookies that we did not hand out ourselves
func IsValid(uid string) bool {
	_, err := uuid.Parse(uid)
	return err == nil
}
