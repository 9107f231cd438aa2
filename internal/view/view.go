// Package view holds the pending/ready display primitive shared by loaders.
package view

// Placeholder is shown while a value is still loading.
const Placeholder = "Please Wait..."

// When renders value with render once ok is true, and Placeholder before that.
func When[T any](value T, ok bool, render func(T) string) string {
	if !ok || render == nil {
		return Placeholder
	}
	return render(value)
}

// Unless renders err with render when err is set, and falls back to pending otherwise.
func Unless(err error, render func(error) string, pending func() string) string {
	if err != nil && render != nil {
		return render(err)
	}
	if pending == nil {
		return Placeholder
	}
	return pending()
}
