/*
Package feature_selection ranks features by information gain.

各列を「値 > 0 なら出現」の二値特徴として扱い、ラベルのエントロピーが
その特徴の有無を知ることでどれだけ減るかをビット単位で測る。

	IG(f) = H(Y) - H(Y | f)

特徴量どうしの相互作用は考えず、列ごとに独立に計算する。結果はスコアの降順で、
同点なら元の列番号の昇順に並ぶ。

Example:

	vocab, X, err := feature_extraction.NewCountVectorizer().FitTransform(docs)
	if err != nil {
		return err
	}
	res, err := feature_selection.NewInfoGain(
		feature_selection.WithMaxFeaturesPerClass(50),
	).Score(X, labels, vocab.Terms())
*/
package feature_selection
