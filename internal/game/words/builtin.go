package words

var builtin = Lists{
	"tr": {
		"esyalar": {
			"masa", "sandalye", "kapı", "pencere", "yastık", "çanta", "şemsiye",
			"saat", "ayna", "dolap", "bardak", "çatal", "kaşık", "gözlük", "anahtar",
			"buzdolabı", "çamaşır makinesi", "halı", "lamba", "telefon",
		},
		"hayvanlar": {
			"kedi", "köpek", "kuş", "balık", "aslan", "kaplumbağa", "tavşan",
			"zürafa", "fil", "örümcek", "yılan", "inek", "koyun", "at", "penguen",
		},
		"yiyecekler": {
			"elma", "armut", "ekmek", "peynir", "çilek", "karpuz", "dondurma",
			"pizza", "simit", "çorba", "üzüm", "muz", "domates", "patlıcan",
		},
	},
	"en": {
		"objects": {
			"table", "chair", "door", "window", "pillow", "umbrella", "clock",
			"mirror", "cup", "fork", "spoon", "glasses", "key", "lamp", "phone",
			"washing machine", "toothbrush", "backpack",
		},
		"animals": {
			"cat", "dog", "bird", "fish", "lion", "turtle", "rabbit", "giraffe",
			"elephant", "spider", "snake", "cow", "sheep", "horse", "penguin",
		},
		"food": {
			"apple", "pear", "bread", "cheese", "strawberry", "watermelon",
			"ice cream", "pizza", "soup", "grape", "banana", "tomato",
		},
	},
}
