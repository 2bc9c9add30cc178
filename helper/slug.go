package helper

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// UniqueSlug slugifies name and appends -1, -2 ... until exists reports the
// candidate as free.
func UniqueSlug(name string, exists func(candidate string) (bool, error)) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = uuid.NewString()[:8]
	}
	result := base
	for i := 1; ; i++ {
		taken, err := exists(result)
		if err != nil {
			return "", err
		}
		if !taken {
			return result, nil
		}
		result = fmt.Sprintf("%s-%d", base, i)
	}
}
