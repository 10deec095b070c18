// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package screen

import (
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/goccy/go-json"
	"github.com/leonardoelit/backoffice/errs"
	"github.com/leonardoelit/backoffice/query"
	"gopkg.in/yaml.v3"
)

// Format 是匯出格式。
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat 解析匯出格式（預設 csv）。
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return CSV, nil
	case CSV, JSON, YAML:
		return f, nil
	case "yml":
		return YAML, nil
	}
	return "", errs.Warnf("unknown export format %q", s)
}

// exportPageSize 是匯出時每次請求的頁大小。
const exportPageSize = 100

// maxExportPages 避免平台回報的 totalPages 異常時無限迴圈。
const maxExportPages = 10000

// Export 以目前提交的 filter 逐頁讀取所有資料並寫到 w，回傳筆數。
//
// 匯出不會改變畫面的狀態（頁碼、資料）；progress 為 nil 時不顯示進度條。
func (s *session[F, T]) Export(ctx context.Context, w io.Writer, format Format, progress io.Writer) (int, error) {
	base := s.coll.Filter()
	paging := query.PagingOf(base)
	paging.PageSize = exportPageSize

	var (
		items []T
		bar   *pb.ProgressBar
	)
	for page := 1; page <= maxExportPages; page++ {
		paging.PageNumber = page
		res, err := s.def.Fetch(ctx, query.WithPaging(base, paging))
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			return 0, errs.Wrap(err, "export "+s.def.Name)
		}
		if bar == nil && progress != nil {
			bar = pb.New(res.TotalCount)
			bar.SetWriter(progress)
			bar.Start()
		}
		items = append(items, res.Items...)
		if bar != nil {
			bar.Add(len(res.Items))
		}
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return len(items), s.write(w, format, items)
}

func (s *session[F, T]) write(w io.Writer, format Format, items []T) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if items == nil {
			items = []T{}
		}
		return enc.Encode(items)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s.records(items)); err != nil {
			return errs.Wrap(err, "encode yaml")
		}
		return enc.Close()
	default:
		cw := csv.NewWriter(w)
		head := make([]string, len(s.def.Columns))
		for i, c := range s.def.Columns {
			head[i] = c.Title
		}
		if err := cw.Write(head); err != nil {
			return errs.Wrap(err, "write csv")
		}
		for _, it := range items {
			row := make([]string, len(s.def.Columns))
			for i, c := range s.def.Columns {
				row[i] = c.Value(it)
			}
			if err := cw.Write(row); err != nil {
				return errs.Wrap(err, "write csv")
			}
		}
		cw.Flush()
		return cw.Error()
	}
}

// records 以欄位 key 為鍵輸出每一列（yaml 不認得 decimal，因此輸出顯示值）。
func (s *session[F, T]) records(items []T) []yaml.Node {
	out := make([]yaml.Node, 0, len(items))
	for _, it := range items {
		n := yaml.Node{Kind: yaml.MappingNode}
		for _, c := range s.def.Columns {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: c.Key},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c.Value(it)},
			)
		}
		out = append(out, n)
	}
	return out
}
