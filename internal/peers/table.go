// Package peers maps a sector to comparable companies and measures their
// one-year performance.
package peers

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sector is one table entry: a sector name and its peers in priority order.
type Sector struct {
	Name    string   `yaml:"name"`
	Symbols []string `yaml:"symbols"`
}

// Table is an ordered sector to peer-symbol mapping. Order matters: the
// first matching entry wins and the first entry is the fallback.
type Table []Sector

// DefaultTable lists NSE sector leaders.
var DefaultTable = Table{
	{Name: "Technology", Symbols: []string{"TCS.NS", "INFY.NS", "WIPRO.NS", "HCLTECH.NS", "TECHM.NS"}},
	{Name: "Financial Services", Symbols: []string{"HDFCBANK.NS", "ICICIBANK.NS", "SBIN.NS", "AXISBANK.NS", "KOTAKBANK.NS"}},
	{Name: "Energy", Symbols: []string{"RELIANCE.NS", "ONGC.NS", "NTPC.NS", "POWERGRID.NS", "BPCL.NS"}},
	{Name: "Consumer Goods", Symbols: []string{"HINDUNILVR.NS", "ITC.NS", "NESTLEIND.NS", "BRITANNIA.NS", "DABUR.NS"}},
	{Name: "Automobile", Symbols: []string{"MARUTI.NS", "TATAMOTORS.NS", "M&M.NS", "HEROMOTOCO.NS", "BAJAJ-AUTO.NS"}},
	{Name: "Pharmaceutical", Symbols: []string{"SUNPHARMA.NS", "DRREDDY.NS", "CIPLA.NS", "DIVISLAB.NS", "BIOCON.NS"}},
	{Name: "Metals", Symbols: []string{"TATASTEEL.NS", "HINDALCO.NS", "JSWSTEEL.NS", "VEDL.NS", "COALINDIA.NS"}},
	{Name: "Cement", Symbols: []string{"ULTRACEMCO.NS", "SHREECEM.NS", "ACC.NS", "AMBUJACEM.NS", "RAMCOCEM.NS"}},
	{Name: "Telecom", Symbols: []string{"BHARTIARTL.NS", "IDEA.NS"}},
	{Name: "Infrastructure", Symbols: []string{"LT.NS", "ADANIPORTS.NS", "DLF.NS", "GODREJPROP.NS", "OBEROIRLTY.NS"}},
}

type tableFile struct {
	Sectors Table `yaml:"sectors"`
}

// LoadTable reads a table from a YAML file of the form
//
//	sectors:
//	  - name: Technology
//	    symbols: [TCS.NS, INFY.NS]
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read peer table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse peer table: %w", err)
	}
	if len(f.Sectors) == 0 {
		return nil, fmt.Errorf("peer table %s has no sectors", path)
	}
	for i, s := range f.Sectors {
		if strings.TrimSpace(s.Name) == "" {
			return nil, fmt.Errorf("peer table %s: sector %d has no name", path, i)
		}
	}
	return f.Sectors, nil
}

// Match returns the peers for sector. The comparison is a case-insensitive
// substring test in either direction, and the first matching entry wins.
// An empty sector has no peers. When nothing matches, the first entry is
// returned and matched is false.
func (t Table) Match(sector string) (symbols []string, matched bool) {
	s := strings.ToLower(strings.TrimSpace(sector))
	if s == "" || len(t) == 0 {
		return nil, false
	}
	for _, entry := range t {
		name := strings.ToLower(entry.Name)
		if strings.Contains(name, s) || strings.Contains(s, name) {
			return entry.Symbols, true
		}
	}
	return t[0].Symbols, false
}
