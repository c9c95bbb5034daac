// Package testsupport holds helpers shared by package tests: temp-directory
// configs and source file writers.
package testsupport
