package stock

import (
	"errors"
	"fmt"

	"github.com/zaidqureshi-dev/menuorder-api/models"
	"gorm.io/gorm"
)

var ErrUnknownKind = errors.New("unknown stock kind")

// Line is one stock adjustment: a counter (menu item or step option) and a
// quantity.
type Line struct {
	Kind     models.StockKind `json:"kind"`
	TargetID uint             `json:"target_id"`
	Quantity int              `json:"quantity"`
}

// LineError pairs a failed line with its cause so the orchestrator can surface
// partial failures as warnings instead of swallowing them.
type LineError struct {
	Line Line
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("stock %s %d: %v", e.Line.Kind, e.Line.TargetID, e.Err)
}

// Service mutates the persisted stock counters. Each line is adjusted with a
// single conditional UPDATE, so concurrent checkouts on the same id cannot
// lose updates.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Reserve decrements each line's counter, flooring at 0. Counters that are
// NULL (unlimited) or missing are no-ops. Lines are processed one at a time;
// failures are collected, not fatal.
func (s *Service) Reserve(lines []Line) []LineError {
	var failed []LineError
	for _, line := range lines {
		if err := s.adjust(line, -line.Quantity); err != nil {
			failed = append(failed, LineError{Line: line, Err: err})
		}
	}
	return failed
}

// Release adds each line's nominal quantity back. It does not know about the
// floor clamp applied on reserve; it simply adds.
func (s *Service) Release(lines []Line) []LineError {
	var failed []LineError
	for _, line := range lines {
		if err := s.adjust(line, line.Quantity); err != nil {
			failed = append(failed, LineError{Line: line, Err: err})
		}
	}
	return failed
}

// adjust applies a delta to one counter atomically. A decrement that would go
// negative sets the counter to 0 instead of failing.
func (s *Service) adjust(line Line, delta int) error {
	model, err := modelFor(line.Kind)
	if err != nil {
		return err
	}

	var expr interface{}
	if delta < 0 {
		qty := -delta
		expr = gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", qty, qty)
	} else {
		expr = gorm.Expr("stock + ?", delta)
	}

	// rows with NULL stock are unlimited and stay untouched
	return s.db.Model(model).
		Where("id = ? AND stock IS NOT NULL", line.TargetID).
		Update("stock", expr).Error
}

// Get reads a counter. nil means unlimited (or an untracked id).
func (s *Service) Get(kind models.StockKind, targetID uint) (*int, error) {
	model, err := modelFor(kind)
	if err != nil {
		return nil, err
	}
	var row struct{ Stock *int }
	err = s.db.Model(model).Select("stock").Where("id = ?", targetID).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row.Stock, nil
}

// Set overwrites a counter; nil switches the id to unlimited.
func (s *Service) Set(kind models.StockKind, targetID uint, value *int) error {
	model, err := modelFor(kind)
	if err != nil {
		return err
	}
	return s.db.Model(model).Where("id = ?", targetID).Update("stock", value).Error
}

func modelFor(kind models.StockKind) (interface{}, error) {
	switch kind {
	case models.StockKindMenuItem:
		return &models.MenuItem{}, nil
	case models.StockKindStepOption:
		return &models.StepOption{}, nil
	}
	return nil, ErrUnknownKind
}
