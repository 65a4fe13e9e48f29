package types_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/podium/internal/domain/types"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

func TestEntry_JSONShape(t *testing.T) {
	Convey("Given a leaderboard entry", t, func() {
		e := types.Entry{
			CustomerID: 42,
			Score:      decimal.RequireFromString("123.45"),
			Rank:       3,
		}

		Convey("When marshaling to JSON", func() {
			data, err := json.Marshal(e)

			Convey("Then field names and value kinds match the wire contract", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, `{"customerId":42,"score":123.45,"rank":3}`)
			})
		})

		Convey("When round-tripping through JSON", func() {
			data, err := json.Marshal(e)
			So(err, ShouldBeNil)

			var got types.Entry
			So(json.Unmarshal(data, &got), ShouldBeNil)

			Convey("Then the entry survives unchanged", func() {
				So(got.CustomerID, ShouldEqual, e.CustomerID)
				So(got.Score.Equal(e.Score), ShouldBeTrue)
				So(got.Rank, ShouldEqual, e.Rank)
			})
		})
	})

	Convey("Given an empty entry slice", t, func() {
		entries := make([]types.Entry, 0)

		Convey("When marshaling to JSON", func() {
			data, err := json.Marshal(entries)

			Convey("Then the result is an empty array, not null", func() {
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "[]")
			})
		})
	})
}
