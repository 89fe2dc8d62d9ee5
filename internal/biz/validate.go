package biz

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Genres is the fixed list of genres a movie can be filed under (IMDb's).
var Genres = []string{
	"Action", "Adventure", "Animation", "Biography", "Comedy", "Crime",
	"Documentary", "Drama", "Family", "Fantasy", "Film Noir", "Game-Show",
	"History", "Horror", "Music", "Musical", "Mystery", "News", "Reality-TV",
	"Romance", "Sci-Fi", "Short", "Sport", "Talk Show", "Thriller", "War",
	"Western",
}

var usernameRX = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.]*$`)

// messages maps "label.tag" (or just "label") to the text shown to users.
var messages = map[string]string{
	"title.required":            "Please enter a movie name",
	"title.min":                 "Your movie name must be at least 3 characters",
	"genre.required":            "Please enter the movie genre",
	"genre.genre":               "That is not an option for a genre",
	"rating":                    "Rating must be from 1-5",
	"new_rating":                "Your updated rating must be from 1-5",
	"name.required":             "Please enter a movie name",
	"limit":                     "limit must be between 0 and 100",
	"email.required":            "Email is required",
	"email.max":                 "Email must be at most 64 characters",
	"email.email":               "Invalid email address",
	"username.required":         "Username is required",
	"username.max":              "Username must be at most 64 characters",
	"username.username":         "Usernames must have only letters, numbers, dots or underscores",
	"password.required":         "Password is required",
	"password_confirm.required": "Please confirm the password",
	"password_confirm.eqfield":  "Passwords must match",
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if label := fld.Tag.Get("label"); label != "" {
				return label
			}
			return fld.Name
		})
		if err := v.RegisterValidation("genre", func(fl validator.FieldLevel) bool {
			return IsGenre(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRX.MatchString(fl.Field().String())
		}); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// IsGenre reports whether name is one of Genres. The match is exact.
func IsGenre(name string) bool {
	for _, g := range Genres {
		if g == name {
			return true
		}
	}
	return false
}

// ValidRating reports whether r is an allowed rating.
func ValidRating(r int) bool {
	return r >= 1 && r <= 5
}

// validateStruct runs the struct tags of s and converts failures into a
// *ValidationError keyed by field label.
func validateStruct(s interface{}) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		if _, exists := ve.Fields[field]; exists {
			continue
		}
		ve.Fields[field] = message(field, fe.Tag(), fe.Param())
	}
	return ve
}

func message(field, tag, param string) string {
	if m, ok := messages[field+"."+tag]; ok {
		return m
	}
	if m, ok := messages[field]; ok {
		return m
	}
	if param != "" {
		return fmt.Sprintf("%s failed %s=%s", field, tag, param)
	}
	return fmt.Sprintf("%s failed %s", field, tag)
}
