package repository

import (
	"strings"
	"testing"
)

func TestBuildLikeConditionByDialectSQLite(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"slug", "name", "description"})
	if argCount != 3 {
		t.Fatalf("arg count want 3 got %d", argCount)
	}
	if !strings.Contains(condition, "slug LIKE ?") {
		t.Fatalf("condition should contain slug LIKE, got %s", condition)
	}
	if strings.Contains(condition, "ILIKE") {
		t.Fatalf("sqlite condition should not use ILIKE, got %s", condition)
	}
}

func TestBuildLikeConditionByDialectPostgres(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("postgres", []string{"name"})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "name ILIKE ?" {
		t.Fatalf("postgres condition want name ILIKE ?, got %s", condition)
	}
}

func TestBuildLikeConditionSkipsEmptyColumns(t *testing.T) {
	condition, argCount := buildLikeConditionByDialect("sqlite", []string{"name", " ", ""})
	if argCount != 1 {
		t.Fatalf("arg count want 1 got %d", argCount)
	}
	if condition != "name LIKE ?" {
		t.Fatalf("condition want name LIKE ?, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%shirt%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%shirt%" {
			t.Fatalf("args[%d] want %%shirt%% got %v", idx, arg)
		}
	}
}
