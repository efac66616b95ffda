package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultFilename       = "salesdesk.toml"
	DefaultCommissionPct  = 0.10
	DefaultCredentialFile = "/etc/secrets/sa.json"
	DefaultListenAddress  = ":8080"

	AmountDeposited = "deposited"
	AmountTotal     = "total"
)

var ErrNotConfigured = errors.New("not configured")

// Workbook is one spreadsheet document and the physical titles of the tabs
// code refers to by logical key.
type Workbook struct {
	ID         string            `toml:"id"`
	Name       string            `toml:"name,omitempty"`
	Worksheets map[string]string `toml:"worksheets"`
}

// Ref addresses a worksheet by logical workbook name and logical key.
type Ref struct {
	Book  string `toml:"book"`
	Sheet string `toml:"sheet"`
}

func (r Ref) String() string { return r.Book + "/" + r.Sheet }

type Credentials struct {
	// File is tried first; JSON is the full service account document.
	File string `toml:"file"`
	JSON string `toml:"json,omitempty"`
}

// Sources names the worksheets each query reads.
type Sources struct {
	Users       Ref   `toml:"users"`
	Sales       Ref   `toml:"sales"`
	Collections Ref   `toml:"collections"`
	Mentions    Ref   `toml:"mentions"`
	RecordCount []Ref `toml:"record_count"`
}

type Config struct {
	ListenAddress        string              `toml:"listen_address"`
	DefaultCommissionPct float64             `toml:"default_commission_pct"`
	SalesAmount          string              `toml:"sales_amount"`
	Credentials          Credentials         `toml:"credentials"`
	Workbooks            map[string]Workbook `toml:"workbooks"`
	Sources              Sources             `toml:"sources"`
}

// Default returns the built-in configuration. Document IDs must still be
// supplied by the file or the environment.
func Default() *Config {
	return &Config{
		ListenAddress:        DefaultListenAddress,
		DefaultCommissionPct: DefaultCommissionPct,
		SalesAmount:          AmountDeposited,
		Credentials:          Credentials{File: DefaultCredentialFile},
		Workbooks: map[string]Workbook{
			"credenciales": {Worksheets: map[string]string{"usuarios": "CREDENCIALES"}},
			"ventas":       {Worksheets: map[string]string{"registro": "QUERYS"}},
		},
		Sources: Sources{
			Users:       Ref{Book: "credenciales", Sheet: "usuarios"},
			Sales:       Ref{Book: "ventas", Sheet: "registro"},
			Collections: Ref{Book: "ventas", Sheet: "registro"},
			Mentions:    Ref{Book: "menciones", Sheet: "registro"},
			RecordCount: []Ref{
				{Book: "datos", Sheet: "datos"},
				{Book: "dashboard", Sheet: "registro"},
				{Book: "ventas", Sheet: "registro"},
			},
		},
	}
}

// Load reads .env, then the TOML file if it exists, then environment
// overrides. A missing file is not an error.
func Load(filename string) (*Config, error) {
	_ = godotenv.Load()

	c := Default()
	if filename == "" {
		filename = DefaultFilename
	}
	b, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := toml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", filename, err)
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	c.applyEnv()
	return c, c.Validate()
}

// Save writes the configuration out as TOML.
func (c *Config) Save(filename string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}

func (c *Config) applyEnv() {
	if v := getenv("GOOGLE_SA_FILE"); v != "" {
		c.Credentials.File = v
	}
	if v := getenv("GOOGLE_SERVICE_ACCOUNT"); v != "" {
		c.Credentials.JSON = v
	}
	if v := getenv("SHEET_CREDENCIALES_ID"); v != "" {
		wb := c.Workbooks["credenciales"]
		wb.ID = v
		c.setWorkbook("credenciales", wb)
	}
	if v := getenv("DEFAULT_COMMISSION_PCT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.DefaultCommissionPct = f
		}
	}
	if v := getenv("SALES_AMOUNT_BASIS"); v != "" {
		c.SalesAmount = strings.ToLower(v)
	}
	if v := getenv("LISTEN_ADDRESS"); v != "" {
		c.ListenAddress = v
	}
}

func (c *Config) setWorkbook(name string, wb Workbook) {
	if c.Workbooks == nil {
		c.Workbooks = map[string]Workbook{}
	}
	c.Workbooks[name] = wb
}

func (c *Config) Validate() error {
	switch c.SalesAmount {
	case AmountDeposited, AmountTotal:
	case "":
		c.SalesAmount = AmountDeposited
	default:
		return fmt.Errorf("sales_amount must be %q or %q, got %q", AmountDeposited, AmountTotal, c.SalesAmount)
	}
	if c.DefaultCommissionPct < 0 || c.DefaultCommissionPct > 1 {
		return fmt.Errorf("default_commission_pct must be a fraction in [0, 1], got %v", c.DefaultCommissionPct)
	}
	return nil
}

// Resolve maps a logical workbook and worksheet key to the document ID and
// the tab's current physical title.
func (c *Config) Resolve(book, sheet string) (id, title string, err error) {
	wb, ok := c.Workbooks[book]
	if !ok {
		return "", "", fmt.Errorf("workbook %q: %w", book, ErrNotConfigured)
	}
	if strings.TrimSpace(wb.ID) == "" {
		return "", "", fmt.Errorf("workbook %q has no id: %w", book, ErrNotConfigured)
	}
	title = strings.TrimSpace(wb.Worksheets[sheet])
	if title == "" {
		return "", "", fmt.Errorf("worksheet %q in %q: %w", sheet, book, ErrNotConfigured)
	}
	return wb.ID, title, nil
}

func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
