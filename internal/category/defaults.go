package category

// FallbackCategory is assigned when no keyword matches.
const FallbackCategory = "雑談・その他"

// DefaultTable is the general retail/commercial-facility table. Entry
// order is the tie-break priority and must stay stable across releases,
// or month-over-month category trends shift without any data changing.
func DefaultTable() Table {
	return Table{
		Fallback: FallbackCategory,
		Entries: []Entry{
			{
				Name: "位置・ナビゲーション",
				Keywords: []string{
					"どこ", "場所", "位置", "行き方", "アクセス", "何階", "フロア", "マップ", "案内",
					"屋上", "南館", "北館", "South", "North",
					"エレベーター", "エスカレーター", "階段", "入口", "出口",
				},
			},
			{
				Name: "店舗・商品照会",
				Keywords: []string{
					"店舗", "ショップ", "店", "ブランド", "カフェ", "レストラン", "食べ物", "飲み物",
					"服", "ファッション", "雑貨", "コスメ", "美容", "クリニック",
					"メニュー", "商品", "在庫", "価格", "料金",
					"和菓子", "スイーツ", "パン", "本屋",
				},
			},
			{
				Name: "施設・サービス",
				Keywords: []string{
					"駐車場", "駐輪場", "ATM", "トイレ", "お手洗い", "化粧室", "授乳室", "ベビールーム",
					"コインロッカー", "荷物", "預かり", "Wi-Fi", "wifi", "充電", "コンセント",
					"ベビーカー", "車椅子", "レンタル", "貸出",
				},
			},
			{
				Name: "営業時間",
				Keywords: []string{
					"営業時間", "何時から", "何時まで", "開店", "閉店", "休業日", "定休日",
					"年末年始", "祝日",
				},
			},
			{
				Name: "イベント・キャンペーン",
				Keywords: []string{
					"イベント", "キャンペーン", "セール", "割引", "ポイント", "会員", "特典",
					"展示会", "期間限定", "ポップアップ",
				},
			},
			{
				Name: "クレーム・フィードバック",
				Keywords: []string{
					"最悪", "ひどい", "不満", "クレーム", "改善", "要望", "ありがとう", "お世話",
					"助かった", "便利", "嬉しい",
				},
			},
		},
	}
}
