package model

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMatchResultJSON_ZeroIndexVisible(t *testing.T) {
	// 命中下标 0 的合法结果，序列化后下标与相似度字段必须存在，
	// API 消费方才能区分 "命中第 0 条指纹" 与 "字段缺失"
	result := MatchResult{
		Matched:          true,
		ZoneName:         "home",
		FingerprintIndex: 0,
		Similarity:       1.0,
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	payload := string(data)
	if !strings.Contains(payload, `"fingerprint_index":0`) {
		t.Errorf("Failed: 下标 0 被省略, payload = %s", payload)
	}
	if !strings.Contains(payload, `"similarity":1`) {
		t.Errorf("Failed: 相似度字段缺失, payload = %s", payload)
	}
}
