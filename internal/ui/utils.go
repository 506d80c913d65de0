package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/reefguard/benthic-survey-poc/internal/survey"
)

// Colors for consistent UI
const (
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorReset  = "\033[0m"
)

// PrintWarning displays a warning message with consistent formatting
func PrintWarning(message string) {
	fmt.Printf("%s\nWarning:%s\n", ColorYellow, ColorReset)
	fmt.Printf("%s%s%s\n", ColorYellow, message, ColorReset)
}

// PrintError displays an error message with consistent formatting
func PrintError(message string) {
	fmt.Printf("\n%sError: %s%s\n", ColorRed, message, ColorReset)
}

// PrintSuccess displays a success message with consistent formatting
func PrintSuccess(message string) {
	fmt.Printf("\n%s%s%s\n", ColorGreen, message, ColorReset)
}

// PrintInfo displays an info message with consistent formatting
func PrintInfo(message string) {
	fmt.Printf("%s%s%s", ColorBlue, message, ColorReset)
}

// ReadString reads a string from stdin with trimming
func ReadString(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	PrintInfo(prompt)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// ReadInt reads an integer from stdin with validation
func ReadInt(prompt string, min, max int) (int, error) {
	PrintInfo(prompt)
	var input string
	fmt.Scanln(&input)
	input = strings.TrimSpace(input)

	value, err := strconv.Atoi(input)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %s", input)
	}

	if value < min || value > max {
		return 0, fmt.Errorf("value must be between %d and %d", min, max)
	}

	return value, nil
}

// ReadYesNo reads a y/n answer, defaulting to no.
func ReadYesNo(prompt string) bool {
	input := strings.ToLower(ReadString(prompt))
	return input == "y" || input == "yes"
}

// SelectFile lists the files with the given extension in a directory and
// lets the user pick one by number.
func SelectFile(dir, ext, what string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("error reading %s folder: %w", what, err)
	}

	files := []string{}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ext) {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no %s files found in %s", what, dir)
	}

	fmt.Printf("%s\nAvailable %s files:%s\n", ColorGreen, what, ColorReset)
	for i, name := range files {
		fmt.Printf("%s%d. %s%s\n", ColorGreen, i+1, name, ColorReset)
	}

	choice, err := ReadInt(fmt.Sprintf("Enter the number of the %s file to use: ", what), 1, len(files))
	if err != nil {
		return "", err
	}

	return files[choice-1], nil
}

// SelectQualityPolicy asks which image-quality convention the export uses.
func SelectQualityPolicy() (survey.QualityPolicy, error) {
	fmt.Printf("%s\nImage quality filtering:%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s1. Numeric quality score (drop score = 0, keep missing)%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s2. Disabled flag column (drop flagged images)%s\n", ColorGreen, ColorReset)
	fmt.Printf("%s3. No filtering%s\n", ColorGreen, ColorReset)

	choice, err := ReadInt("Enter your choice: ", 1, 3)
	if err != nil {
		return survey.QualityPolicy{}, err
	}

	switch choice {
	case 1:
		return survey.QualityPolicy{Mode: survey.QualityScoreSentinel, ScoreColumn: "image_quality", BadScore: 0}, nil
	case 2:
		return survey.QualityPolicy{Mode: survey.QualityDisabledFlag, DisabledColumn: "image_disabled"}, nil
	}
	return survey.QualityPolicy{Mode: survey.QualityKeepAll}, nil
}
