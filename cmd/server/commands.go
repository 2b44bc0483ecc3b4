package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Skufu/healthlens/internal/detect"
	"github.com/Skufu/healthlens/internal/risk"
	"github.com/Skufu/healthlens/internal/storage"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.DatabaseURL == "" {
				return errors.New("DATABASE_URL is required for migrate")
			}
			return storage.RunMigrations(a.cfg.DatabaseURL, a.log)
		},
	}
}

type riskFlags struct {
	age, bloodPressure, glucose, bmi string
	gender, smoking, heartDisease    string
}

func newRiskCmd(a *app) *cobra.Command {
	var f riskFlags
	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Score a stroke-risk profile and print the assessment as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := risk.HealthProfile{
				Age:           risk.Field(f.age),
				Gender:        f.gender,
				BloodPressure: risk.Field(f.bloodPressure),
				Glucose:       risk.Field(f.glucose),
				BMI:           risk.Field(f.bmi),
				Smoking:       f.smoking,
				HeartDisease:  f.heartDisease,
			}
			return writeJSON(cmd.OutOrStdout(), risk.Assess(p))
		},
	}
	cmd.Flags().StringVar(&f.age, "age", "", "Age in years")
	cmd.Flags().StringVar(&f.gender, "gender", "", "male, female or other")
	cmd.Flags().StringVar(&f.bloodPressure, "bp", "", "Systolic blood pressure (mmHg)")
	cmd.Flags().StringVar(&f.glucose, "glucose", "", "Fasting glucose (mg/dL)")
	cmd.Flags().StringVar(&f.bmi, "bmi", "", "Body mass index")
	cmd.Flags().StringVar(&f.smoking, "smoking", risk.SmokingNever, "never, former or current")
	cmd.Flags().StringVar(&f.heartDisease, "heart-disease", "no", "yes or no")
	return cmd
}

type fileResult struct {
	File string `json:"file"`
	detect.Result
}

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect <image>...",
		Short: "Run the skin-condition matching demo on image files",
		Args:  cobra.RangeArgs(1, detect.MaxImages),
		RunE: func(cmd *cobra.Command, args []string) error {
			images := make([]detect.Image, 0, len(args))
			for _, path := range args {
				data, err := readImage(path)
				if err != nil {
					return err
				}
				images = append(images, detect.Image{Name: filepath.Base(path), Data: data})
			}

			results, err := detect.NewAnalyzer(detect.DefaultCatalog(), a.log).AnalyzeAll(cmd.Context(), images)
			if err != nil {
				return err
			}

			out := make([]fileResult, len(results))
			for i, r := range results {
				out[i] = fileResult{File: images[i].Name, Result: r}
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
}

func readImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, detect.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if err := detect.ValidateImage(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
