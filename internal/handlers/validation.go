package handlers

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Field length bounds shared by the authored-content create forms.
const (
	nameMinLen          = 2
	nameMaxLen          = 30
	shortDescriptionMax = 30
	longDescriptionMax  = 200
	minPasswordLen      = 8
	fullNameMaxLen      = 60
)

func validateCreateProgramRequest(req createProgramRequest) string {
	if msg := validateLength("name", req.Name, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	if msg := validateLength("type", req.Type, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	if req.Description != nil {
		if msg := validateLength("description", *req.Description, nameMinLen, longDescriptionMax); msg != "" {
			return msg
		}
	}
	if req.DurationDays <= 0 {
		return "duration_days must be greater than 0"
	}
	if req.Price < 0 {
		return "price must be 0 or greater"
	}
	return ""
}

func validateCreateMealRequest(req createMealRequest) string {
	if msg := validateLength("name", req.Name, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	return validateLength("description", req.Description, nameMinLen, shortDescriptionMax)
}

func validateCreateTrainingRequest(req createTrainingRequest) string {
	if msg := validateLength("name", req.Name, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	if msg := validateLength("type", req.Type, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	return validateLength("description", req.Description, nameMinLen, longDescriptionMax)
}

func validateCreateExerciseRequest(req createExerciseRequest) string {
	if msg := validateLength("name", req.Name, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	if msg := validateLength("target_muscle", req.TargetMuscle, nameMinLen, nameMaxLen); msg != "" {
		return msg
	}
	if req.Description != nil {
		if msg := validateLength("description", *req.Description, nameMinLen, longDescriptionMax); msg != "" {
			return msg
		}
	}
	return ""
}

func validateCreateDayRequest(req createDayRequest) string {
	return validateLength("name", req.Name, nameMinLen, nameMaxLen)
}

func validateLength(field, value string, min, max int) string {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	if length < min || length > max {
		return fmt.Sprintf("%s must be between %d and %d characters", field, min, max)
	}
	return ""
}
