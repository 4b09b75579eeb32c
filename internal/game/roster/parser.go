// Package roster builds hero and enemy rosters from line-oriented text.
//
// The input has three section tokens, each alone on a line: "hero" starts the
// hero section, "enemy" the enemy section and "end" stops reading. Data lines
// have the form
//
//	<class> <str> <dex> <vit> <int> <name...>
//
// where class is knight, thief or mage (any case) and the name may contain
// spaces. Lines with fewer than five tokens are skipped.
package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/character"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// minFields is the number of tokens a data line needs: class plus four attributes.
const minFields = 5

// ErrInvalidStat is returned when an attribute token is not an integer.
var ErrInvalidStat = errors.New("attribute is not an integer")

// Record is one tokenized data line.
type Record struct {
	Side       combat.Side
	Class      character.Class
	Attributes character.Attributes
	Name       string
	// Line is the 1-based input line number.
	Line int
}

// Roster holds the two sides of a battle in declaration order.
type Roster struct {
	Heroes  []*character.Character
	Enemies []*character.Character
}

// ParseRecord tokenizes one data line belonging to side. A line with exactly
// five tokens gets the class name as its character name.
//
// Postcondition: ok is false with a nil error when the line has too few
// tokens; an unknown class wraps character.ErrUnknownClass and a non-integer
// attribute wraps ErrInvalidStat.
func ParseRecord(side combat.Side, lineNo int, line string) (rec Record, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) < minFields {
		return Record{}, false, nil
	}

	class, err := character.ParseClass(fields[0])
	if err != nil {
		return Record{}, false, fmt.Errorf("line %d: %w", lineNo, err)
	}

	var stats [4]int
	for i := range stats {
		v, err := strconv.Atoi(fields[i+1])
		if err != nil {
			return Record{}, false, fmt.Errorf("line %d: %w: %q", lineNo, ErrInvalidStat, fields[i+1])
		}
		stats[i] = v
	}

	name := strings.Join(fields[minFields:], " ")
	if name == "" {
		name = class.String()
	}

	return Record{
		Side:  side,
		Class: class,
		Attributes: character.Attributes{
			Strength:     stats[0],
			Dexterity:    stats[1],
			Vitality:     stats[2],
			Intelligence: stats[3],
		},
		Name: name,
		Line: lineNo,
	}, true, nil
}

// Tokenize reads r up to the "end" token or EOF and returns the data records
// of the hero and enemy sections in input order. Lines before the first
// section token are ignored.
//
// Postcondition: Returns every well-formed record, or the first fatal error.
func Tokenize(r io.Reader) ([]Record, error) {
	var (
		records []Record
		side    combat.Side
		inside  bool
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch strings.ToLower(line) {
		case "hero":
			side, inside = combat.SideHeroes, true
			continue
		case "enemy":
			side, inside = combat.SideEnemies, true
			continue
		case "end":
			return records, nil
		}
		if !inside {
			continue
		}
		rec, ok, err := ParseRecord(side, lineNo, line)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading roster: %w", err)
	}
	return records, nil
}

// Build constructs characters from records, arming each from catalog.
//
// Precondition: catalog must be non-nil.
// Postcondition: Returns a Roster preserving record order within each side,
// or the first construction error.
func Build(records []Record, catalog *weapon.Catalog) (*Roster, error) {
	r := &Roster{}
	for _, rec := range records {
		c, err := character.New(rec.Class, rec.Name, rec.Attributes, catalog)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", rec.Line, err)
		}
		if rec.Side == combat.SideEnemies {
			r.Enemies = append(r.Enemies, c)
		} else {
			r.Heroes = append(r.Heroes, c)
		}
	}
	return r, nil
}

// Parse tokenizes r and builds the roster.
//
// Precondition: catalog must be non-nil.
// Postcondition: Returns a Roster or the first fatal error.
func Parse(r io.Reader, catalog *weapon.Catalog) (*Roster, error) {
	records, err := Tokenize(r)
	if err != nil {
		return nil, err
	}
	return Build(records, catalog)
}
