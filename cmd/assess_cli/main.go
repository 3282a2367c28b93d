package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"credit-risk/internal/config"
	"credit-risk/internal/domain"
	apihttp "credit-risk/internal/http"
	"credit-risk/internal/model"
	"credit-risk/internal/service"
)

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := zap.NewExample()
	defer logger.Sync()

	loaded, err := model.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("model load: %v", err)
	}
	inferenceSvc := service.NewInferenceService(loaded.Classifier, service.MustNewEncoder(), logger, nil)

	fmt.Printf("===== Risk Classification Tool (%s %s) =====\n", loaded.Info.Name, loaded.Info.Version)
	for {
		q, err := readQuery(reader, os.Stdout)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			log.Fatalf("read input: %v", err)
		}

		verdict, err := inferenceSvc.Predict(ctx, q)
		if err != nil {
			fmt.Printf("\nAssessment failed: %v\n\n", err)
		} else {
			printVerdict(os.Stdout, verdict)
		}

		fmt.Print("Analyze another profile? [y/N]: ")
		again, _ := reader.ReadString('\n')
		if strings.ToLower(strings.TrimSpace(again)) != "y" {
			return
		}
	}
}

// readQuery pregunta los nueve campos en el orden del formulario.
func readQuery(reader *bufio.Reader, out io.Writer) (domain.RiskQuery, error) {
	var q domain.RiskQuery
	var err error

	fmt.Fprintln(out, "\n--- Personal Information ---")
	if q.Age, err = readIntInRange(reader, out, "Age", 30, domain.AgeMin, domain.AgeMax); err != nil {
		return q, err
	}
	if q.Sex, err = chooseOption(reader, out, "Gender", domain.SexOptions); err != nil {
		return q, err
	}
	if q.Job, err = chooseOption(reader, out, "Employment Status", domain.JobOptions); err != nil {
		return q, err
	}
	if q.Housing, err = chooseOption(reader, out, "Housing Situation", domain.HousingOptions); err != nil {
		return q, err
	}

	fmt.Fprintln(out, "\n--- Financial Information ---")
	if q.SavingAccounts, err = chooseOption(reader, out, "Savings Account Status", domain.AccountOptions); err != nil {
		return q, err
	}
	if q.CheckingAccount, err = chooseOption(reader, out, "Checking Account Status", domain.AccountOptions); err != nil {
		return q, err
	}
	if q.CreditAmount, err = readIntInRange(reader, out, "Credit Amount ($)", 5000, domain.CreditAmountMin, domain.CreditAmountMax); err != nil {
		return q, err
	}
	if q.Duration, err = readIntInRange(reader, out, "Loan Duration (months)", 12, domain.DurationMin, domain.DurationMax); err != nil {
		return q, err
	}

	fmt.Fprintln(out, "\n--- Loan Purpose ---")
	if q.Purpose, err = chooseOption(reader, out, "Purpose of Loan", domain.PurposeOptions); err != nil {
		return q, err
	}
	return q, q.ValidateRanges()
}

// readIntInRange repite la pregunta hasta obtener un entero valido. Una linea
// vacia usa def.
func readIntInRange(reader *bufio.Reader, out io.Writer, label string, def, min, max int) (int, error) {
	for {
		fmt.Fprintf(out, "%s [%d-%d] (default %d): ", label, min, max, def)
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return 0, err
		}
		if line == "" {
			return def, nil
		}
		v, convErr := strconv.Atoi(line)
		if convErr == nil && v >= min && v <= max {
			return v, nil
		}
		fmt.Fprintf(out, "Value must be an integer between %d and %d.\n", min, max)
		if err != nil {
			return 0, err
		}
	}
}

// chooseOption muestra las opciones numeradas; una linea vacia elige la primera.
func chooseOption(reader *bufio.Reader, out io.Writer, label string, options []string) (string, error) {
	for {
		fmt.Fprintf(out, "%s:\n", label)
		for i, opt := range options {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, opt)
		}
		fmt.Fprint(out, "Selection (default 1): ")
		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && line == "" {
			return "", err
		}
		if line == "" {
			return options[0], nil
		}
		idx, convErr := strconv.Atoi(line)
		if convErr == nil && idx >= 1 && idx <= len(options) {
			return options[idx-1], nil
		}
		fmt.Fprintln(out, "Invalid selection.")
		if err != nil {
			return "", err
		}
	}
}

func printVerdict(out io.Writer, verdict domain.Verdict) {
	view := apihttp.ViewForVerdict(verdict)
	fmt.Fprintf(out, "\n*** %s ***\n%s\n\n%s:\n", view.Headline, view.Description, view.Details.Title)
	for _, item := range view.Details.Items {
		fmt.Fprintf(out, "  - %s\n", item)
	}
	fmt.Fprintf(out, "%s\n\n", view.Details.Disclaimer)
}
