package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"salesdash/analytics"
	"salesdash/metrics"
	"salesdash/models"
)

// Query parameters of the filter form and API.
const (
	paramCity         = "city"
	paramCustomerType = "customer_type"
	paramGender       = "gender"
	// paramFiltered marks a submitted form: absent dimensions then mean "none selected".
	paramFiltered = "filtered"
)

// ErrUnknownFilterValue is returned for a value that does not occur in the table.
var ErrUnknownFilterValue = errors.New("unknown filter value")

// SelectionFromQuery reads the three multi-value filters from the query string.
// Without the filtered marker a missing dimension selects every observed value.
func SelectionFromQuery(c *fiber.Ctx, opts models.FilterOptions) (models.Selection, error) {
	explicit := c.Query(paramFiltered) != ""

	cities, err := pick(c, paramCity, opts.Cities, explicit)
	if err != nil {
		return models.Selection{}, err
	}
	types, err := pick(c, paramCustomerType, opts.CustomerTypes, explicit)
	if err != nil {
		return models.Selection{}, err
	}
	genders, err := pick(c, paramGender, opts.Genders, explicit)
	if err != nil {
		return models.Selection{}, err
	}
	return models.Selection{Cities: cities, CustomerTypes: types, Genders: genders}, nil
}

func pick(c *fiber.Ctx, key string, observed []string, explicit bool) (map[string]bool, error) {
	raw := c.Context().QueryArgs().PeekMulti(key)
	if len(raw) == 0 {
		if explicit {
			return map[string]bool{}, nil
		}
		return nil, nil
	}

	valid := analytics.SetOf(observed...)
	set := make(map[string]bool, len(raw))
	for _, b := range raw {
		v := string(b)
		if !valid[v] {
			return nil, fmt.Errorf("%w: %s=%q", ErrUnknownFilterValue, key, v)
		}
		set[v] = true
	}
	return set, nil
}

// selectedView applies the request's selection to the table.
func (h *Handlers) selectedView(c *fiber.Ctx) (models.Selection, []models.SalesRecord, error) {
	sel, err := SelectionFromQuery(c, h.options)
	if err != nil {
		return sel, nil, err
	}
	view := analytics.Filter(h.table, sel)
	metrics.FilteredRows.Observe(float64(len(view)))
	h.logger.Debug("selection applied", "path", c.Path(), "rows", len(view), "of", len(h.table))
	return sel, view, nil
}

func (h *Handlers) badSelection(c *fiber.Ctx, err error) error {
	h.logger.Warn("rejected selection", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "message": err.Error()})
}

// selectedOptions lists, per dimension, the observed values kept by sel.
func selectedOptions(opts models.FilterOptions, sel models.Selection) models.FilterOptions {
	keep := func(values []string, set map[string]bool) []string {
		out := make([]string, 0, len(values))
		for _, v := range values {
			if set == nil || set[v] {
				out = append(out, v)
			}
		}
		return out
	}
	return models.FilterOptions{
		Cities:        keep(opts.Cities, sel.Cities),
		CustomerTypes: keep(opts.CustomerTypes, sel.CustomerTypes),
		Genders:       keep(opts.Genders, sel.Genders),
	}
}
