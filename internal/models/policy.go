package models

import (
	"fmt"
	"strings"
)

// ParseDeletePolicy parses the CLI delete parameter.
func ParseDeletePolicy(s string) (DeletePolicy, error) {
	switch DeletePolicy(strings.ToUpper(s)) {
	case DeleteSource, KeepSource:
		return DeletePolicy(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("%w: delete flag must be %s or %s, got %q", ErrUsage, DeleteSource, KeepSource, s)
}

// ParseOverwritePolicy parses the CLI overwrite parameter.
func ParseOverwritePolicy(s string) (OverwritePolicy, error) {
	switch OverwritePolicy(strings.ToUpper(s)) {
	case Overwrite, NoOverwrite:
		return OverwritePolicy(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("%w: overwrite policy must be %s or %s, got %q", ErrUsage, Overwrite, NoOverwrite, s)
}

// ParseMultiplicityPolicy parses the CLI multiplicity parameter.
func ParseMultiplicityPolicy(s string) (MultiplicityPolicy, error) {
	switch MultiplicityPolicy(strings.ToUpper(s)) {
	case AllowMany, SingleOnly, RandomOne:
		return MultiplicityPolicy(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("%w: multiplicity policy must be %s, %s or %s, got %q", ErrUsage, AllowMany, SingleOnly, RandomOne, s)
}

// ParseRequirednessPolicy parses the CLI requiredness parameter.
func ParseRequirednessPolicy(s string) (RequirednessPolicy, error) {
	switch RequirednessPolicy(strings.ToUpper(s)) {
	case Required, Optional:
		return RequirednessPolicy(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("%w: requiredness policy must be %s or %s, got %q", ErrUsage, Required, Optional, s)
}

// ParseConversionPolicy parses the CLI conversion parameter (SMB only).
func ParseConversionPolicy(s string) (ConversionPolicy, error) {
	switch ConversionPolicy(strings.ToUpper(s)) {
	case Convert, NoConvert:
		return ConversionPolicy(strings.ToUpper(s)), nil
	}
	return "", fmt.Errorf("%w: conversion flag must be %s or %s, got %q", ErrUsage, Convert, NoConvert, s)
}
