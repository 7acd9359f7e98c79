// Package catalog собирает представления товаров из нормализованных строк хранилища
// и реализует правила каталога: выбор обложки и её атомарную смену, граф похожих
// товаров, построение поискового предиката и защиту от дублей комментариев.
//
// Пакет не открывает соединений и не управляет транзакциями: чтение строк
// выполняют вызывающие, а компоненты, которым нужна запись, получают порт хранилища
// через конструктор.
package catalog
