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

package apiclient

// Envelope 是平台所有回應共有的外框。
//
// 大部分 endpoint 回 {isSuccess, message}；部分舊的 mutation endpoint 回 {hasError, description}。
// 兩種形狀在這裡被正規化成同一個 OK() / Text()。
type Envelope struct {
	IsSuccess   *bool  `json:"isSuccess,omitempty"`
	Message     string `json:"message,omitempty"`
	HasError    bool   `json:"hasError,omitempty"`
	Description string `json:"description,omitempty"`
}

// OK 回報回應是否成功。
//
//   - hasError:true 一律失敗。
//   - 有 isSuccess 時以它為準。
//   - 兩者皆無時視為成功（舊 endpoint 成功時只回 description）。
func (e Envelope) OK() bool {
	if e.HasError {
		return false
	}
	if e.IsSuccess != nil {
		return *e.IsSuccess
	}
	return true
}

// Text 回傳給操作員看的訊息：message 優先，其次 description。
func (e Envelope) Text() string {
	if e.HasError && e.Description != "" {
		return e.Description
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Description
}

// Result 是 mutation 的結果：成功訊息與可選的 payload。
type Result struct {
	Message string
	Data    []byte
}
