package ntypes

import (
	jsoniter "github.com/json-iterator/go"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/commtypes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type EventJSONSerdeG struct{}

var _ = commtypes.SerdeG[*Event](EventJSONSerdeG{})

func (s EventJSONSerdeG) Encode(value *Event) ([]byte, error) {
	return json.Marshal(value)
}

func (s EventJSONSerdeG) Decode(value []byte) (*Event, error) {
	v := Event{}
	if err := json.Unmarshal(value, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

type EventMsgpSerdeG struct{}

var _ = commtypes.SerdeG[*Event](EventMsgpSerdeG{})

func (s EventMsgpSerdeG) Encode(value *Event) ([]byte, error) {
	return value.MarshalMsg(make([]byte, 0, value.Msgsize()))
}

func (s EventMsgpSerdeG) Decode(value []byte) (*Event, error) {
	v := Event{}
	if _, err := v.UnmarshalMsg(value); err != nil {
		return nil, err
	}
	return &v, nil
}

func GetEventSerdeG(serdeFormat commtypes.SerdeFormat) (commtypes.SerdeG[*Event], error) {
	switch serdeFormat {
	case commtypes.JSON:
		return EventJSONSerdeG{}, nil
	case commtypes.MSGP:
		return EventMsgpSerdeG{}, nil
	default:
		return nil, common_errors.ErrUnrecognizedSerdeFormat
	}
}
