package sentence

import "github.com/ieee0824/pronounce-go/score"

var builtin = []Entry{
	{"Selamat pagi", "Good morning", score.Easy, ""},
	{"Aku sakit", "I am sick", score.Easy, ""},
	{"Apa kabar?", "How are you?", score.Easy, ""},
	{"Terima kasih", "Thank you", score.Easy, ""},
	{"Nama saya John", "My name is John", score.Easy, ""},
	{"Saya suka Indonesia", "I like Indonesia", score.Easy, ""},
	{"Sampai jumpa besok", "See you tomorrow", score.Easy, ""},
	{"Berapa harganya?", "How much is it?", score.Easy, ""},
	{"Di mana toilet?", "Where is the toilet?", score.Easy, ""},
	{"Saya lapar", "I am hungry", score.Easy, ""},
	{"Selamat malam", "Good evening", score.Easy, ""},
	{"Ini enak", "This is delicious", score.Easy, ""},
	{"Saya tidak mengerti", "I don't understand", score.Easy, ""},

	{"Berapa harga makanan ini?", "How much is this food?", score.Medium, ""},
	{"Dia tidak sepenuhnya mempercayaiku", "He does not fully trust me", score.Medium, ""},
	{"Di mana stasiun kereta api?", "Where is the train station?", score.Medium, ""},
	{"Saya belajar bahasa Indonesia", "I am learning Indonesian", score.Medium, ""},
	{"Hari ini cuaca bagus", "Today the weather is good", score.Medium, ""},
	{"Boleh saya pesan kopi?", "May I order coffee?", score.Medium, ""},
	{"Saya tinggal di Jakarta", "I live in Jakarta", score.Medium, ""},
	{"Jam berapa sekarang?", "What time is it now?", score.Medium, ""},
	{"Kapan kita akan bertemu?", "When will we meet?", score.Medium, ""},
	{"Saya suka makanan pedas", "I like spicy food", score.Medium, ""},
	{"Apakah Anda bisa berbahasa Inggris?", "Can you speak English?", score.Medium, ""},
	{"Berapa lama Anda tinggal di sini?", "How long have you been living here?", score.Medium, ""},
	{"Saya perlu membeli tiket", "I need to buy a ticket", score.Medium, ""},

	{"Keanekaragaman budaya Indonesia sangat menarik", "Indonesia's cultural diversity is very interesting", score.Difficult, ""},
	{"Bahasa Indonesia adalah bahasa pemersatu", "Indonesian is a unifying language", score.Difficult, ""},
	{"Saya ingin mengunjungi Pulau Komodo tahun depan", "I want to visit Komodo Island next year", score.Difficult, ""},
	{"Pembelajaran jarak jauh sangat menantang", "Distance learning is very challenging", score.Difficult, ""},
	{"Makanan Indonesia terkenal dengan rempah-rempahnya", "Indonesian food is famous for its spices", score.Difficult, ""},
	{"Kebijakan pemerintah tentang pariwisata sedang diperbarui", "Government policies on tourism are being updated", score.Difficult, ""},
	{"Perkembangan teknologi digital mengubah cara hidup kita", "Digital technology development is changing our way of life", score.Difficult, ""},
	{"Melestarikan budaya lokal sangat penting di era globalisasi", "Preserving local culture is very important in the globalization era", score.Difficult, ""},
	{"Kami sedang menghadapi tantangan ekonomi yang signifikan", "We are facing significant economic challenges", score.Difficult, ""},
	{"Perubahan iklim mempengaruhi pola tanam petani", "Climate change affects farmers' planting patterns", score.Difficult, ""},
	{"Pendidikan berkualitas adalah hak setiap warga negara", "Quality education is the right of every citizen", score.Difficult, ""},
	{"Industri kreatif di Indonesia berkembang pesat akhir-akhir ini", "The creative industry in Indonesia has been growing rapidly lately", score.Difficult, ""},
}

// Builtin returns a catalog of the bundled practice sentences.
func Builtin() *Catalog {
	return New(builtin)
}
