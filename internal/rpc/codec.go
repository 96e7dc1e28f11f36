package rpc

import (
	"google.golang.org/grpc/encoding"

	"github.com/FrederickAlmeida/Reserva-Hotel/internal/wire"
)

// CodecName é o content-subtype usado pelo serviço: as mensagens trafegam
// como JSON, com os mesmos formatos da fila e da API HTTP.
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return wire.JSON.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return wire.JSON.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
