// Package chart builds the declarative Vega-Lite specifications for the
// dashboard panels.
package chart

import "encoding/json"

// Schema is the Vega-Lite schema every top-level spec declares.
const Schema = "https://vega.github.io/schema/vega-lite/v5.json"

// Spec is a (subset of a) Vega-Lite view specification. Layer children use the
// same type without Schema or Data.
type Spec struct {
	Schema    string      `json:"$schema,omitempty"`
	Data      *Data       `json:"data,omitempty"`
	Params    []Param     `json:"params,omitempty"`
	Transform []Transform `json:"transform,omitempty"`
	Mark      *Mark       `json:"mark,omitempty"`
	Encoding  *Encoding   `json:"encoding,omitempty"`
	Layer     []Spec      `json:"layer,omitempty"`
	Width     float64     `json:"width,omitempty"`
	Height    float64     `json:"height,omitempty"`
}

type Data struct {
	URL    string      `json:"url"`
	Format *DataFormat `json:"format,omitempty"`
}

type DataFormat struct {
	Type  string            `json:"type"`
	Parse map[string]string `json:"parse,omitempty"`
}

// Param is a named parameter: either a selection (Select set) or a plain
// value that the host page may update later.
type Param struct {
	Name   string           `json:"name"`
	Value  any              `json:"value,omitempty"`
	Select *SelectionConfig `json:"select,omitempty"`
	Bind   any              `json:"bind,omitempty"`
}

// MarshalJSON always writes value for a plain value parameter, so an empty
// selection still declares the parameter's value.
func (p Param) MarshalJSON() ([]byte, error) {
	type param Param
	if p.Select != nil {
		return json.Marshal(param(p))
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
		Bind  any    `json:"bind,omitempty"`
	}{Name: p.Name, Value: p.Value, Bind: p.Bind})
}

type SelectionConfig struct {
	Type   string   `json:"type"`
	Fields []string `json:"fields,omitempty"`
	Toggle any      `json:"toggle,omitempty"`
}

type Transform struct {
	Filter    any           `json:"filter,omitempty"`
	TimeUnit  string        `json:"timeUnit,omitempty"`
	Field     string        `json:"field,omitempty"`
	Calculate string        `json:"calculate,omitempty"`
	Aggregate []AggregateOp `json:"aggregate,omitempty"`
	GroupBy   []string      `json:"groupby,omitempty"`
	As        string        `json:"as,omitempty"`
}

type AggregateOp struct {
	Op    string `json:"op"`
	Field string `json:"field,omitempty"`
	As    string `json:"as"`
}

type Mark struct {
	Type        string   `json:"type"`
	Filled      bool     `json:"filled,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty"`
	Size        float64  `json:"size,omitempty"`
	StrokeWidth float64  `json:"strokeWidth,omitempty"`
	FontSize    float64  `json:"fontSize,omitempty"`
	Point       bool     `json:"point,omitempty"`
	Tooltip     bool     `json:"tooltip,omitempty"`
}

type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Size    *Channel  `json:"size,omitempty"`
	Opacity *Channel  `json:"opacity,omitempty"`
	Text    *Channel  `json:"text,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel is one encoding channel definition.
type Channel struct {
	Field     string          `json:"field,omitempty"`
	Type      string          `json:"type,omitempty"`
	Title     string          `json:"title,omitempty"`
	Aggregate string          `json:"aggregate,omitempty"`
	TimeUnit  string          `json:"timeUnit,omitempty"`
	Sort      string          `json:"sort,omitempty"`
	Format    string          `json:"format,omitempty"`
	Scale     *Scale          `json:"scale,omitempty"`
	Legend    json.RawMessage `json:"legend,omitempty"`
	Condition *Condition      `json:"condition,omitempty"`
	Value     any             `json:"value,omitempty"`
}

type Condition struct {
	Param string `json:"param"`
	Value any    `json:"value"`
	Empty *bool  `json:"empty,omitempty"`
}

type Scale struct {
	Domain  []float64 `json:"domain,omitempty"`
	Range   []float64 `json:"range,omitempty"`
	Scheme  string    `json:"scheme,omitempty"`
	Reverse bool      `json:"reverse,omitempty"`
	Zero    *bool     `json:"zero,omitempty"`
}

// NoLegend disables a channel's legend (`"legend": null`).
var NoLegend = json.RawMessage("null")

// Size is the pixel size of a chart's plotting area.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func ptr[T any](v T) *T { return &v }
