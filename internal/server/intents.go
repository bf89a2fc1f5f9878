package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"umbrella-rogue/internal/domain"
	"umbrella-rogue/pkg/api"
)

var (
	ErrUnknownAction  = errors.New("unknown action")
	ErrInvalidPayload = errors.New("invalid payload")
)

type intentDecoder func(raw json.RawMessage) (domain.Intent, error)

// withPayload распаковывает JSON в T, валидирует его (если T реализует api.Validator)
// и собирает намерение
func withPayload[T any](build func(T) domain.Intent) intentDecoder {
	return func(raw json.RawMessage) (domain.Intent, error) {
		var payload T
		if len(raw) == 0 {
			return domain.Intent{}, fmt.Errorf("%w: payload required", ErrInvalidPayload)
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return domain.Intent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
		}
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return domain.Intent{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
		}
		return build(payload), nil
	}
}

func withoutPayload(kind domain.IntentKind) intentDecoder {
	return func(json.RawMessage) (domain.Intent, error) {
		return domain.Simple(kind), nil
	}
}

var decoders = map[domain.IntentKind]intentDecoder{
	domain.IntentMove: withPayload(func(p api.DirectionPayload) domain.Intent {
		return domain.Move(p.Dx, p.Dy)
	}),
	domain.IntentSelect: withPayload(func(p api.SelectPayload) domain.Intent {
		return domain.Select(p.Index)
	}),
	domain.IntentHover: withPayload(func(p api.PositionPayload) domain.Intent {
		return domain.Hover(p.X, p.Y)
	}),
	domain.IntentWait:             withoutPayload(domain.IntentWait),
	domain.IntentPickUp:           withoutPayload(domain.IntentPickUp),
	domain.IntentOpenInventory:    withoutPayload(domain.IntentOpenInventory),
	domain.IntentDrop:             withoutPayload(domain.IntentDrop),
	domain.IntentConfirm:          withoutPayload(domain.IntentConfirm),
	domain.IntentCancel:           withoutPayload(domain.IntentCancel),
	domain.IntentToggleFullscreen: withoutPayload(domain.IntentToggleFullscreen),
	domain.IntentExit:             withoutPayload(domain.IntentExit),
}

// DecodeIntent переводит команду клиента в намерение движка
func DecodeIntent(cmd api.ClientCommand) (domain.Intent, error) {
	kind := domain.ParseIntentKind(cmd.Action)
	decode, ok := decoders[kind]
	if !ok {
		return domain.Intent{}, fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	return decode(cmd.Payload)
}
