package core_test

import (
	"fmt"
	"time"

	"github.com/aretw0/broadsheet/pkg/core"
)

// news builds a record the way the loader would, before enrichment.
func news(key string, published any) core.Record {
	data := core.Metadata{core.KeyTitle: "Item " + key}
	if published != nil {
		data[core.KeyPublished] = published
	}
	return core.Record{Key: key, Data: data}
}

// sevenItems returns seven items with distinct dates, oldest first.
func sevenItems() []core.Record {
	base := time.Date(2017, time.March, 1, 0, 0, 0, 0, time.UTC)
	recs := make([]core.Record, 0, 7)
	for i := 0; i < 7; i++ {
		key := fmt.Sprintf("templates/news/item-%d.hbs", i+1)
		recs = append(recs, news(key, base.AddDate(0, 0, i)))
	}
	return recs
}

func keys(recs []core.Record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.Key)
	}
	return out
}
