// Package token defines the tokens of TeX input and the category codes
// used to classify characters into tokens.
package token
