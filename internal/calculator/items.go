package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/kcalvin/solarsizer/internal/calculator/batch"
	"github.com/kcalvin/solarsizer/internal/logging"
	"github.com/kcalvin/solarsizer/internal/provider"
	"github.com/kcalvin/solarsizer/internal/sizing"
)

// ResultKey is the field added to each item holding its calculation.
const ResultKey = "solar_calculation"

// invalidRateMessage is reported per item for a non-positive rate.
const invalidRateMessage = "Invalid electricity rate"

const envelopeKey = "json"

// Item is one workflow item: an arbitrary JSON object whose known fields
// form a Request. Unknown fields are carried through to the output.
type Item map[string]json.RawMessage

// Input is one decoded workflow item plus the envelope keys that travel
// beside "json", such as pairedItem or binary. Envelope is nil for bare
// items.
type Input struct {
	Item     Item
	Envelope map[string]json.RawMessage
}

// ItemResult pairs an input item with its result or error.
type ItemResult struct {
	Input    Item
	Envelope map[string]json.RawMessage
	Result   *Result
	Err      error
}

// ErrorMessage returns the per-item error text, or "" on success.
func (r ItemResult) ErrorMessage() string {
	switch {
	case r.Err == nil:
		return ""
	case errors.Is(r.Err, sizing.ErrInvalidRate):
		return invalidRateMessage
	default:
		return r.Err.Error()
	}
}

// MarshalJSON emits the input fields plus the solar_calculation field.
func (r ItemResult) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Input)+1)
	for k, v := range r.Input {
		out[k] = v
	}
	if r.Err != nil {
		out[ResultKey] = map[string]string{"error": r.ErrorMessage()}
	} else {
		out[ResultKey] = r.Result
	}
	return json.Marshal(out)
}

// Envelope wraps an item the way workflow engines pass it between nodes.
// Sibling keys of the input envelope are carried through.
type Envelope struct {
	JSON ItemResult
}

// MarshalJSON emits {"json": ...} plus the carried envelope keys.
func (e Envelope) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.JSON.Envelope)+1)
	for k, v := range e.JSON.Envelope {
		out[k] = v
	}
	out[envelopeKey] = e.JSON
	return json.Marshal(out)
}

// Wrap converts results into workflow envelopes.
func Wrap(results []ItemResult) []Envelope {
	out := make([]Envelope, len(results))
	for i, r := range results {
		out[i] = Envelope{JSON: r}
	}
	return out
}

// DecodeItems accepts either a bare array of item objects or an array of
// {"json": {...}} envelopes.
func DecodeItems(data []byte) ([]Input, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}

	return UnwrapItems(raw), nil
}

// UnwrapItems converts decoded objects into inputs. An object whose "json"
// key holds an object is an envelope; its other keys are kept on the
// input. Anything else is a bare item.
func UnwrapItems(raw []map[string]json.RawMessage) []Input {
	inputs := make([]Input, len(raw))
	for i, obj := range raw {
		item, ok := envelopeItem(obj)
		if !ok {
			inputs[i] = Input{Item: Item(obj)}
			continue
		}
		var siblings map[string]json.RawMessage
		if len(obj) > 1 {
			siblings = make(map[string]json.RawMessage, len(obj)-1)
			for k, v := range obj {
				if k != envelopeKey {
					siblings[k] = v
				}
			}
		}
		inputs[i] = Input{Item: item, Envelope: siblings}
	}
	return inputs
}

func envelopeItem(obj map[string]json.RawMessage) (Item, bool) {
	inner, ok := obj[envelopeKey]
	if !ok {
		return nil, false
	}
	var item Item
	if err := json.Unmarshal(inner, &item); err != nil || item == nil {
		return nil, false
	}
	return item, true
}

// Request decodes the known request fields of the item.
func (it Item) Request() (Request, error) {
	var req Request
	data, err := json.Marshal(map[string]json.RawMessage(it))
	if err != nil {
		return req, err
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return req, fmt.Errorf("invalid item: %w", err)
	}
	if req.GoogleSolarResponse == nil {
		bi, ok, err := it.inlineInsights(data)
		if err != nil {
			return req, err
		}
		if ok {
			req.GoogleSolarResponse = bi
		}
	}
	if req.GoogleSolarResponse != nil {
		if err := req.GoogleSolarResponse.Validate(); err != nil {
			return req, err
		}
	}
	return req, nil
}

// inlineInsights looks for provider data placed directly on the item,
// either as a solarPotential object or as flat solarPanelConfigs.
func (it Item) inlineInsights(data []byte) (*provider.BuildingInsights, bool, error) {
	var bi provider.BuildingInsights
	if _, ok := it["solarPotential"]; ok {
		if err := json.Unmarshal(data, &bi); err != nil {
			return nil, false, fmt.Errorf("invalid item: %w", err)
		}
		return &bi, true, nil
	}
	if _, ok := it["solarPanelConfigs"]; ok {
		var sp provider.SolarPotential
		if err := json.Unmarshal(data, &sp); err != nil {
			return nil, false, fmt.Errorf("invalid item: %w", err)
		}
		bi.SolarPotential = &sp
		return &bi, true, nil
	}
	return nil, false, nil
}

// CalculateItems evaluates every item independently. A failing item gets an
// error entry and does not affect the others. Results keep input order.
func CalculateItems(
	ctx context.Context,
	inputs []Input,
	opts Options,
	concurrency int,
	progress batch.ProgressFunc,
) ([]ItemResult, error) {
	results := make([]ItemResult, len(inputs))
	if len(inputs) == 0 {
		return results, nil
	}

	proc, err := batch.NewProcessor[Input](
		batch.DefaultBatchSize,
		batch.WithConcurrency(concurrency),
		batch.WithProgress(progress),
	)
	if err != nil {
		return nil, err
	}

	log := logging.FromContext(ctx)
	err = proc.Run(ctx, inputs, func(_ context.Context, i int, in Input) error {
		results[i] = evaluateItem(in.Item, opts)
		results[i].Envelope = in.Envelope
		if results[i].Err != nil {
			log.Debug().Ctx(ctx).Int("item", i).Err(results[i].Err).Msg("item calculation failed")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func evaluateItem(item Item, opts Options) ItemResult {
	out := ItemResult{Input: maps.Clone(item)}
	req, err := item.Request()
	if err != nil {
		out.Err = err
		return out
	}
	res, err := Calculate(req, opts)
	if err != nil {
		out.Err = err
		return out
	}
	out.Result = &res
	return out
}
