package entityservice

import (
	"testing"

	"github.com/diwise/entity-service/pkg/entities"
	"github.com/diwise/entity-service/pkg/values"
	"github.com/matryer/is"
)

func TestAttributeNamesMayContainDots(t *testing.T) {
	is := is.New(t)

	e := entities.New("Sensor", entities.ID("s1"), entities.Attribute("air.temperature", values.Float(1.5)))

	doc, err := encodeEntity(e)
	is.NoErr(err)

	decoded, err := decodeEntity(doc)
	is.NoErr(err)
	is.True(values.Equal(decoded.Attributes["air.temperature"], values.Float(1.5)))
}

func TestAnAttributeNamedValueIsNotMistakenForAWrapper(t *testing.T) {
	is := is.New(t)

	e := entities.New("Sensor", entities.ID("s1"), entities.IdentifyingAttribute("value", values.Long(7)))

	doc, err := encodeEntity(e)
	is.NoErr(err)

	decoded, err := decodeEntity(doc)
	is.NoErr(err)
	is.True(values.Equal(decoded.IdentifyingAttributes["value"], values.Long(7)))
}
