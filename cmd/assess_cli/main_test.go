package main

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"credit-risk/internal/domain"
)

func TestReadQueryDefaults(t *testing.T) {
	input := strings.Repeat("\n", 9)
	q, err := readQuery(bufio.NewReader(strings.NewReader(input)), io.Discard)
	if err != nil {
		t.Fatalf("read query: %v", err)
	}
	want := domain.RiskQuery{
		Age:             30,
		Sex:             "Male",
		Job:             "Skilled",
		Housing:         "Own",
		SavingAccounts:  "None",
		CheckingAccount: "None",
		CreditAmount:    5000,
		Duration:        12,
		Purpose:         "New car",
	}
	if q != want {
		t.Fatalf("expected %+v, got %+v", want, q)
	}
}

func TestReadQueryExplicitAnswers(t *testing.T) {
	input := "45\n2\n2\n3\n4\n3\n12000\n36\n5\n"
	q, err := readQuery(bufio.NewReader(strings.NewReader(input)), io.Discard)
	if err != nil {
		t.Fatalf("read query: %v", err)
	}
	if q.Age != 45 || q.Sex != "Female" || q.Job != "Unskilled" || q.Housing != "Free" ||
		q.SavingAccounts != "Good" || q.CheckingAccount != "Moderate" ||
		q.CreditAmount != 12000 || q.Duration != 36 || q.Purpose != "Education" {
		t.Fatalf("unexpected query %+v", q)
	}
}

func TestReadIntInRangeRepromptsOnInvalid(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("17\nabc\n18\n"))
	v, err := readIntInRange(reader, &out, "Age", 30, 18, 100)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 18 {
		t.Fatalf("expected 18, got %d", v)
	}
	if strings.Count(out.String(), "Value must be an integer") != 2 {
		t.Fatalf("expected two reprompts, got:\n%s", out.String())
	}
}

func TestChooseOptionEOF(t *testing.T) {
	_, err := chooseOption(bufio.NewReader(strings.NewReader("")), io.Discard, "Gender", domain.SexOptions)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestPrintVerdict(t *testing.T) {
	var out bytes.Buffer
	printVerdict(&out, domain.VerdictHighRisk)
	if !strings.Contains(out.String(), "High Risk Profile") || !strings.Contains(out.String(), "Housing situation and stability") {
		t.Fatalf("unexpected verdict output:\n%s", out.String())
	}
}
