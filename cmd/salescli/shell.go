package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	apierrors "salespulse/internal/errors"
	"salespulse/internal/services"
	api "salespulse/pkg/contracts/api/v1"
	"salespulse/pkg/contracts/domain"
)

// dispatcher runs dashboard requests; satisfied by *services.DashboardService
type dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, req services.Request) (services.Response, error)
}

type menuEntry struct {
	key   string
	label string
}

var menu = []menuEntry{
	{"1", "Generate Sales Data"},
	{"2", "View Statistical Analysis"},
	{"3", "View Sales Data"},
	{"4", "View Last 30 Days"},
	{"5", "Filter Sales Above Threshold"},
	{"6", "Add Sales Category"},
	{"7", "Save Data to CSV"},
	{"0", "Exit"},
}

// shell is the interactive terminal front end over one dashboard session
type shell struct {
	service          dispatcher
	sessionID        string
	defaultThreshold float64
	exportFormat     string
	in               *bufio.Scanner
	out              io.Writer
}

func newShell(service dispatcher, sessionID string, defaultThreshold float64, exportFormat string, in io.Reader, out io.Writer) *shell {
	return &shell{
		service:          service,
		sessionID:        sessionID,
		defaultThreshold: defaultThreshold,
		exportFormat:     exportFormat,
		in:               bufio.NewScanner(in),
		out:              out,
	}
}

// run shows the menu until the user exits, input ends or ctx is cancelled
func (s *shell) run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Sales Data Analysis Dashboard")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printMenu()
		choice, ok := s.readLine("Choose an option: ")
		if !ok {
			return s.in.Err()
		}
		if choice == "0" || strings.EqualFold(choice, "q") {
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		}
		s.execute(ctx, choice)
	}
}

func (s *shell) printMenu() {
	fmt.Fprintln(s.out)
	for _, entry := range menu {
		fmt.Fprintf(s.out, "  %s) %s\n", entry.key, entry.label)
	}
}

func (s *shell) readLine(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *shell) execute(ctx context.Context, choice string) {
	var req services.Request
	switch choice {
	case "1":
		req = services.GenerateRequest{}
	case "2":
		req = services.StatisticsRequest{}
	case "3":
		req = services.HeadRequest{}
	case "4":
		req = services.TailRequest{}
	case "5":
		threshold, ok := s.readThreshold()
		if !ok {
			return
		}
		req = services.FilterRequest{Threshold: threshold}
	case "6":
		req = services.CategorizeRequest{}
	case "7":
		req = services.ExportRequest{Format: s.exportFormat}
	default:
		fmt.Fprintf(s.out, "Unknown option %q.\n", choice)
		return
	}

	resp, err := s.service.Dispatch(ctx, s.sessionID, req)
	if err != nil {
		s.printError(err)
		return
	}
	s.render(resp)
}

func (s *shell) readThreshold() (float64, bool) {
	line, ok := s.readLine(fmt.Sprintf("Enter threshold value [%g]: ", s.defaultThreshold))
	if !ok || line == "" {
		return s.defaultThreshold, ok
	}
	threshold, err := strconv.ParseFloat(line, 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid threshold %q: enter a number.\n", line)
		return 0, false
	}
	return threshold, true
}

func (s *shell) printError(err error) {
	var apiErr *apierrors.APIError
	switch {
	case errors.Is(err, apierrors.ErrNoData):
		fmt.Fprintln(s.out, "Please generate sales data first.")
	case errors.As(err, &apiErr):
		fmt.Fprintf(s.out, "Invalid input: %s\n", describeAPIError(apiErr))
	default:
		fmt.Fprintf(s.out, "Error: %v\n", err)
	}
}

func describeAPIError(err *apierrors.APIError) string {
	details, ok := err.Details.(apierrors.ValidationErrors)
	if !ok || len(details.Errors) == 0 {
		return err.Message
	}
	messages := make([]string, 0, len(details.Errors))
	for _, fe := range details.Errors {
		messages = append(messages, fe.Message)
	}
	return strings.Join(messages, "; ")
}

func (s *shell) render(resp services.Response) {
	switch r := resp.(type) {
	case api.GenerateResponse:
		fmt.Fprintln(s.out, "Sales data has been generated.")
	case api.StatisticsResponse:
		fmt.Fprintln(s.out, "Statistical Analysis")
		tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "Average Sales\t%.2f\n", r.Mean)
		fmt.Fprintf(tw, "Median Sales\t%.2f\n", r.Median)
		fmt.Fprintf(tw, "Standard Deviation\t%.2f\n", r.StandardDeviation)
		tw.Flush()
	case api.RecordsResponse:
		fmt.Fprintln(s.out, recordsTitle(r))
		s.renderRecords(r.Records)
	case api.CategorizedResponse:
		fmt.Fprintln(s.out, "Sales Data with Categories")
		s.renderCategorized(r.Records)
	case api.ExportResponse:
		fmt.Fprintf(s.out, "Data saved to '%s'.\n", r.Path)
	default:
		fmt.Fprintf(s.out, "%+v\n", r)
	}
}

func recordsTitle(r api.RecordsResponse) string {
	switch r.View {
	case "tail":
		return fmt.Sprintf("Last %d Days of Sales Data", r.Count)
	case "filter":
		if r.Threshold != nil {
			return fmt.Sprintf("Sales Above %g Units", *r.Threshold)
		}
	}
	return "Sales Data"
}

func (s *shell) renderRecords(records domain.RecordSet) {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tSales\tSales Growth Rate (%)\t")
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t\n", rec.Day, rec.Sales, rec.GrowthRate)
	}
	tw.Flush()
}

func (s *shell) renderCategorized(records []domain.CategorizedRecord) {
	tw := tabwriter.NewWriter(s.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Day\tSales\tSales Growth Rate (%)\tCategory\t")
	for _, rec := range records {
		fmt.Fprintf(tw, "%d\t%d\t%.2f\t%s\t\n", rec.Day, rec.Sales, rec.GrowthRate, rec.Category)
	}
	tw.Flush()
}
