package main

import (
	"testing"
)

func TestComplexityCmd_FlagsExist(t *testing.T) {
	cmd := complexityCmd()

	expectedFlags := []string{"format", "json", "output", "config", "min", "max", "sort", "low-threshold", "medium-threshold", "details", "recursive", "include", "exclude"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestComplexityCmd_ShortFlags(t *testing.T) {
	cmd := complexityCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestComplexityCmd_DefaultValues(t *testing.T) {
	cmd := complexityCmd()

	formatFlag := cmd.Flags().Lookup("format")
	if formatFlag == nil {
		t.Fatal("format flag not found")
	}
	if formatFlag.DefValue != "text" {
		t.Errorf("Expected default format to be 'text', got '%s'", formatFlag.DefValue)
	}

	lowFlag := cmd.Flags().Lookup("low-threshold")
	if lowFlag == nil {
		t.Fatal("low-threshold flag not found")
	}
	if lowFlag.DefValue != "9" {
		t.Errorf("Expected default low-threshold to be '9', got '%s'", lowFlag.DefValue)
	}

	mediumFlag := cmd.Flags().Lookup("medium-threshold")
	if mediumFlag == nil {
		t.Fatal("medium-threshold flag not found")
	}
	if mediumFlag.DefValue != "19" {
		t.Errorf("Expected default medium-threshold to be '19', got '%s'", mediumFlag.DefValue)
	}
}

func TestComplexityCmd_NoPathsError(t *testing.T) {
	cmd := complexityCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestRecommendCmd_FlagsExist(t *testing.T) {
	cmd := recommendCmd()

	expectedFlags := []string{"format", "json", "output", "sort", "status-file", "status", "effort", "impact", "search"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestRecommendCmd_ShortFlags(t *testing.T) {
	cmd := recommendCmd()

	shortFlags := map[string]string{
		"f": "format",
		"o": "output",
		"s": "sort",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestRecommendCmd_DefaultValues(t *testing.T) {
	cmd := recommendCmd()

	sortFlag := cmd.Flags().Lookup("sort")
	if sortFlag == nil {
		t.Fatal("sort flag not found")
	}
	if sortFlag.DefValue != "priority" {
		t.Errorf("Expected default sort to be 'priority', got '%s'", sortFlag.DefValue)
	}
}

func TestRecommendCmd_NoInputError(t *testing.T) {
	cmd := recommendCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no quality report specified")
	}
}

func TestCheckCmd_FlagsExist(t *testing.T) {
	cmd := checkCmd()

	expectedFlags := []string{"max-complexity", "max-nesting", "max-params", "verbose", "json", "no-color", "config"}
	for _, flagName := range expectedFlags {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			t.Errorf("Missing expected flag: --%s", flagName)
		}
	}
}

func TestCheckCmd_ShortFlags(t *testing.T) {
	cmd := checkCmd()

	shortFlags := map[string]string{
		"v": "verbose",
		"c": "config",
	}

	for short, long := range shortFlags {
		flag := cmd.Flags().ShorthandLookup(short)
		if flag == nil {
			t.Errorf("Missing short flag -%s for --%s", short, long)
		}
	}
}

func TestCheckCmd_DefaultValues(t *testing.T) {
	cmd := checkCmd()

	maxFlag := cmd.Flags().Lookup("max-complexity")
	if maxFlag == nil {
		t.Fatal("max-complexity flag not found")
	}
	if maxFlag.DefValue != "19" {
		t.Errorf("Expected default max-complexity to be '19', got '%s'", maxFlag.DefValue)
	}

	nestingFlag := cmd.Flags().Lookup("max-nesting")
	if nestingFlag == nil {
		t.Fatal("max-nesting flag not found")
	}
	if nestingFlag.DefValue != "4" {
		t.Errorf("Expected default max-nesting to be '4', got '%s'", nestingFlag.DefValue)
	}

	paramsFlag := cmd.Flags().Lookup("max-params")
	if paramsFlag == nil {
		t.Fatal("max-params flag not found")
	}
	if paramsFlag.DefValue != "5" {
		t.Errorf("Expected default max-params to be '5', got '%s'", paramsFlag.DefValue)
	}
}

func TestCheckCmd_NoPathsError(t *testing.T) {
	cmd := checkCmd()
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	if err == nil {
		t.Error("Expected error when no paths specified")
	}
}

func TestCheckExitError_Error(t *testing.T) {
	err := &CheckExitError{Code: 1, Message: "test error"}
	if err.Error() != "test error" {
		t.Errorf("Error() should return message, got '%s'", err.Error())
	}
}

func TestVersionCmd_FlagsExist(t *testing.T) {
	cmd := versionCmd()

	if cmd == nil {
		t.Fatal("versionCmd should not return nil")
	}

	verboseFlag := cmd.Flags().Lookup("verbose")
	if verboseFlag == nil {
		t.Error("Missing expected flag: --verbose")
	}
}

func TestVersionCmd_ShortFlag(t *testing.T) {
	cmd := versionCmd()

	flag := cmd.Flags().ShorthandLookup("v")
	if flag == nil {
		t.Error("Missing short flag -v for --verbose")
	}
}
