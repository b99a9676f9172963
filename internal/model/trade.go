package model

import "time"

// Trade はユーザーが記録した1件のトレードを表す。
// OwnerIDは作成時に認証済みユーザーのIDで固定され、以降変更されない。
// Date・Risk・RRは表示用の自由書式文字列として扱い、コアでは解釈しない。
type Trade struct {
	ID        int64
	OwnerID   int64
	Date      string
	Pair      string
	Direction string
	Risk      string
	RR        string
	PL        float64
	Obs       string
	Link      string
	CreatedAt time.Time
}
